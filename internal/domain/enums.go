package domain

// EntityType identifies the kind of domain entity (used in audit logs).
type EntityType string

const (
	EntityTypeConversation EntityType = "CONVERSATION"
	EntityTypeUser         EntityType = "USER"
)

func (e EntityType) String() string { return string(e) }

func (e EntityType) IsValid() bool {
	switch e {
	case EntityTypeConversation, EntityTypeUser:
		return true
	}
	return false
}

// AuditAction represents the kind of mutation recorded in the audit log.
type AuditAction string

const (
	AuditActionCreate            AuditAction = "CREATE"
	AuditActionAddParticipant    AuditAction = "ADD_PARTICIPANT"
	AuditActionRemoveParticipant AuditAction = "REMOVE_PARTICIPANT"
	AuditActionSendMessage       AuditAction = "SEND_MESSAGE"
)

func (a AuditAction) String() string { return string(a) }

func (a AuditAction) IsValid() bool {
	switch a {
	case AuditActionCreate, AuditActionAddParticipant, AuditActionRemoveParticipant, AuditActionSendMessage:
		return true
	}
	return false
}
