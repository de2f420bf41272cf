package usecase

import "github.com/google/uuid"

const (
	SourceSkillRecord = "skill_record"
	SourceAcademic    = "academic"
	SourceProfile     = "profile"
)

// AnalyticsNotifier is told when data feeding a learner's analytics changes.
type AnalyticsNotifier interface {
	NotifyAnalyticsUpdated(learnerID uuid.UUID, source string)
}

type nopNotifier struct{}

func (nopNotifier) NotifyAnalyticsUpdated(uuid.UUID, string) {}

func notifierOrNop(n AnalyticsNotifier) AnalyticsNotifier {
	if n == nil {
		return nopNotifier{}
	}
	return n
}
