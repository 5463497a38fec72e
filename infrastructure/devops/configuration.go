package devops

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// ServiceCredentials is the SSM payload holding the Directus service
// identity, stored as a SecureString with a YAML body.
type ServiceCredentials struct {
	Email       string `yaml:"email"`
	Password    string `yaml:"password"`
	DirectusURL string `yaml:"directus_url"`
	JWTSecret   string `yaml:"jwt_secret"`
}

type ParameterGetter interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

func NewSSMClient(ctx context.Context) (*ssm.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return ssm.NewFromConfig(cfg), nil
}

func LoadServiceCredentials(ctx context.Context, client ParameterGetter, paramName string) (*ServiceCredentials, error) {
	out, err := client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(paramName),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("get parameter %s: %w", paramName, err)
	}
	if out.Parameter == nil || out.Parameter.Value == nil {
		return nil, fmt.Errorf("parameter %s is empty", paramName)
	}
	return ParseServiceCredentials(*out.Parameter.Value)
}

func ParseServiceCredentials(value string) (*ServiceCredentials, error) {
	var parsed ServiceCredentials
	if err := yaml.Unmarshal([]byte(value), &parsed); err != nil {
		return nil, fmt.Errorf("unmarshal yaml: %w", err)
	}
	if parsed.Email == "" || parsed.Password == "" {
		return nil, fmt.Errorf("service credentials need email and password")
	}
	return &parsed, nil
}
