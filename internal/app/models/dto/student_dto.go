package dto

// UpdateStudentRequest carries the fields a student may change on their
// profile. Only these fields are mutable; update payloads with other keys are
// rejected by strict decoding at the controller.
type UpdateStudentRequest struct {
	FirstName *string `json:"firstName,omitempty" validate:"omitempty,min=2,max=100"`
	LastName  *string `json:"lastName,omitempty" validate:"omitempty,min=2,max=100"`
	Major     *string `json:"major,omitempty" validate:"omitempty,min=1,max=100"`
	Age       *int    `json:"age,omitempty" validate:"omitempty,gte=17,lte=25"`
}

// IsEmpty reports whether no updatable field was supplied
func (r *UpdateStudentRequest) IsEmpty() bool {
	return r.FirstName == nil && r.LastName == nil && r.Major == nil && r.Age == nil
}

// StudentResponse is the public view of a student (credential hash excluded)
type StudentResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Major     string `json:"major"`
	Age       int    `json:"age"`
}
