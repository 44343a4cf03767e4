package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Closed value sets for the enumerated employee fields.
var (
	Designations = []string{"HR", "Sales", "Manager"}
	Genders      = []string{"Male", "Female", "Other"}
	Courses      = []string{"MCA", "BCA", "BSC"}
)

// Employee is a single employee record stored in MongoDB.
type Employee struct {
	ID          primitive.ObjectID `json:"_id"         bson:"_id,omitempty"`
	Image       string             `json:"image"       bson:"image"`
	Name        string             `json:"name"        bson:"name"`
	Email       string             `json:"email"       bson:"email"`
	MobileNo    string             `json:"mobile_no"   bson:"mobile_no"`
	Designation string             `json:"designation" bson:"designation"`
	Gender      string             `json:"gender"      bson:"gender"`
	Course      string             `json:"course"      bson:"course"`
	CreateDate  time.Time          `json:"create_date" bson:"create_date"`
}

// EmployeeFields are the client-editable employee attributes. Empty strings mean
// "not supplied" on update.
//
// The validate tags are checked by go-playground/validator once the record is
// complete; alphaspace is registered by the employees package.
type EmployeeFields struct {
	Name        string `json:"name"        validate:"required,min=2,max=20,alphaspace"`
	Email       string `json:"email"       validate:"required,email"`
	MobileNo    string `json:"mobile_no"   validate:"required,number,min=10,max=15"`
	Designation string `json:"designation" validate:"required,oneof=HR Sales Manager"`
	Gender      string `json:"gender"      validate:"required,oneof=Male Female Other"`
	Course      string `json:"course"      validate:"required,oneof=MCA BCA BSC"`
}

// Fields returns the editable attributes of e.
func (e *Employee) Fields() EmployeeFields {
	return EmployeeFields{
		Name:        e.Name,
		Email:       e.Email,
		MobileNo:    e.MobileNo,
		Designation: e.Designation,
		Gender:      e.Gender,
		Course:      e.Course,
	}
}

// Merge overlays the non-empty values of f onto base.
func (f EmployeeFields) Merge(base EmployeeFields) EmployeeFields {
	pick := func(v, old string) string {
		if v != "" {
			return v
		}
		return old
	}
	return EmployeeFields{
		Name:        pick(f.Name, base.Name),
		Email:       pick(f.Email, base.Email),
		MobileNo:    pick(f.MobileNo, base.MobileNo),
		Designation: pick(f.Designation, base.Designation),
		Gender:      pick(f.Gender, base.Gender),
		Course:      pick(f.Course, base.Course),
	}
}

// Apply copies f into e.
func (e *Employee) Apply(f EmployeeFields) {
	e.Name = f.Name
	e.Email = f.Email
	e.MobileNo = f.MobileNo
	e.Designation = f.Designation
	e.Gender = f.Gender
	e.Course = f.Course
}
