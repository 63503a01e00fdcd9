package domain

// Caller is the authenticated identity a request acts on behalf of. It is resolved once
// per request and passed explicitly into every usecase call.
type Caller struct {
	UserID     int64  `json:"user_id"`
	Username   string `json:"username"`
	IsStaff    bool   `json:"is_staff"`
	IsEmployer bool   `json:"is_employer"`
}

func (c Caller) Authenticated() bool {
	return c.UserID > 0
}

// ProfileScope narrows a profile listing. All is only granted to staff.
type ProfileScope struct {
	All    bool
	UserID int64
}

// RecordScope narrows applications and matches. Exactly one of the two ids is set:
// EmployerID selects records whose job's company was created by that user,
// CandidateID selects records where that user is the applicant/candidate.
type RecordScope struct {
	EmployerID  int64
	CandidateID int64
}

func (s RecordScope) ForEmployer() bool {
	return s.EmployerID > 0
}
