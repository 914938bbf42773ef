package models

// SubmissionStatus tracks grading progress of a submission.
type SubmissionStatus string

const (
	SubmissionPending   SubmissionStatus = "pending"
	SubmissionCompleted SubmissionStatus = "completed"
	// SubmissionChecked is accepted from older clients and means the same as completed.
	SubmissionChecked SubmissionStatus = "checked"
)

const (
	ExamineeEmailField = "examineeEmail"
	StatusField        = "status"
	RemarkField        = "remark"
	FeedbackField      = "feedback"
)

// GradeRequest is the reviewer payload for a submission.
type GradeRequest struct {
	Status   SubmissionStatus `json:"status" validate:"required,oneof=pending completed checked"`
	Remark   string           `json:"remark"`
	Feedback string           `json:"feedback"`
}

// Fields returns exactly the three fields written by a grading update.
func (r GradeRequest) Fields() Document {
	return Document{
		StatusField:   string(r.Status),
		RemarkField:   r.Remark,
		FeedbackField: r.Feedback,
	}
}
