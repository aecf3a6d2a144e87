package model

import "regexp"

// Role is the profile type assigned at registration. It is immutable and
// decides which workflow a user gets: learners search for lessons,
// volunteers manage offers and respond to requests.
type Role string

const (
	RoleLearner   Role = "ALUNO"
	RoleVolunteer Role = "VOLUNTARIO"
	RoleManager   Role = "GESTOR"
)

func (r Role) IsValid() bool {
	return r == RoleLearner || r == RoleVolunteer || r == RoleManager
}

// User is the authenticated profile as returned by the backend.
type User struct {
	ID    int    `json:"id_usuario,omitempty"`
	Name  string `json:"nome"`
	Email string `json:"email,omitempty"`
	Phone string `json:"telefone,omitempty"`
	Role  Role   `json:"tipo_perfil"`
}

// Status is the appointment lifecycle state. Confirmed and Cancelled are
// terminal: the only transition the client ever issues is the volunteer's
// decision on a pending request.
type Status string

const (
	StatusRequested Status = "PENDENTE"
	StatusConfirmed Status = "CONFIRMADO"
	StatusCancelled Status = "CANCELADO"
)

func (s Status) IsValid() bool {
	return s == StatusRequested || s == StatusConfirmed || s == StatusCancelled
}

// IsDecision reports whether s is a status a volunteer may respond with.
func (s Status) IsDecision() bool {
	return s == StatusConfirmed || s == StatusCancelled
}

// CanTransitionTo reports whether a local transition from s to next is
// permitted. The backend is authoritative; this is a defensive check so an
// invalid decision never leaves the process.
func (s Status) CanTransitionTo(next Status) bool {
	return s == StatusRequested && next.IsDecision()
}

// Offer is a volunteer's standing availability for a subject.
// VolunteerName is only populated on search results, where the owner is
// someone else.
type Offer struct {
	ID            int    `json:"id"`
	Subject       string `json:"disciplina"`
	AvailableDays string `json:"dias_disponiveis"`
	StartTime     string `json:"horario_inicio"`
	EndTime       string `json:"horario_fim"`
	VolunteerName string `json:"nome_voluntario,omitempty"`
}

// Appointment is a concrete scheduling request tying an offer to a calendar
// date. The backend fills in the counterpart name for the requesting side:
// learners get the volunteer's name, volunteers get the learner's.
type Appointment struct {
	ID            int    `json:"id_agendamento"`
	Date          string `json:"data_aula"`
	StartTime     string `json:"horario_inicio"`
	EndTime       string `json:"horario_fim"`
	Subject       string `json:"disciplina"`
	Status        Status `json:"status,omitempty"`
	LearnerName   string `json:"nome_aluno,omitempty"`
	VolunteerName string `json:"nome_voluntario,omitempty"`
}

// CounterpartName returns the other participant's name from the viewer's
// perspective.
func (a Appointment) CounterpartName(viewer Role) string {
	if viewer == RoleVolunteer {
		return a.LearnerName
	}
	return a.VolunteerName
}

var (
	timeRe = regexp.MustCompile(`^\d{2}:\d{2}$`)
	dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// ValidTime reports whether s is in HH:MM form. Checked locally before any
// create-offer call is issued.
func ValidTime(s string) bool {
	return timeRe.MatchString(s)
}

// ValidDate reports whether s is in YYYY-MM-DD form. Checked locally before
// any create-appointment call is issued.
func ValidDate(s string) bool {
	return dateRe.MatchString(s)
}

// ShortTime trims backend time values like "14:00:00" down to "14:00".
func ShortTime(s string) string {
	if len(s) > 5 {
		return s[:5]
	}
	return s
}
