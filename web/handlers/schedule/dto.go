package schedule

import "teamop.dk/bosted/model"

type UserDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type ShiftDTO struct {
	ID              int       `json:"id"`
	StartDateTime   string    `json:"startDateTime"`
	EndDateTime     string    `json:"endDateTime"`
	TaskType        string    `json:"taskType"`
	TaskDescription *string   `json:"taskDescription"`
	SubLocationName *string   `json:"subLocationName"`
	AssignedUsers   []UserDTO `json:"assignedUsers"`
}

type ActivityDTO struct {
	ID              int       `json:"id"`
	Title           string    `json:"title"`
	Description     *string   `json:"description"`
	StartDateTime   string    `json:"startDateTime"`
	EndDateTime     string    `json:"endDateTime"`
	LocationID      *string   `json:"locationId"`
	SubLocationName *string   `json:"subLocationName"`
	RegisteredUsers []UserDTO `json:"registeredUsers"`
}

func toUserDTO(u model.User) UserDTO {
	return UserDTO{ID: u.ID, Name: u.DisplayName(), Email: u.Email}
}

func toUserDTOs(users []model.User) []UserDTO {
	dtos := make([]UserDTO, 0, len(users))
	for _, u := range users {
		dtos = append(dtos, toUserDTO(u))
	}
	return dtos
}

func toShiftDTO(s model.Shift) ShiftDTO {
	return ShiftDTO{
		ID:              s.ID,
		StartDateTime:   s.StartDateTime,
		EndDateTime:     s.EndDateTime,
		TaskType:        s.TaskType,
		TaskDescription: s.TaskDescription,
		SubLocationName: s.SubLocationName,
		AssignedUsers:   toUserDTOs(s.AssignedUsers),
	}
}

func toActivityDTO(a model.Activity) ActivityDTO {
	return ActivityDTO{
		ID:              a.ID,
		Title:           a.Title,
		Description:     a.Description,
		StartDateTime:   a.StartDateTime,
		EndDateTime:     a.EndDateTime,
		LocationID:      a.LocationID,
		SubLocationName: a.SubLocationName,
		RegisteredUsers: toUserDTOs(a.RegisteredUsers),
	}
}
