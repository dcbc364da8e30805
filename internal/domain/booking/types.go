package booking

// State is the single lifecycle tag for a booking. It folds the approval
// status and the payment status into one value so that combinations like
// "completed but unpaid" cannot be represented.
type State string

const (
	StatePendingUnpaid            State = "pending_unpaid"
	StatePendingPaid              State = "pending_paid"
	StateConfirmedAwaitingPayment State = "confirmed_awaiting_payment"
	StateConfirmedPaid            State = "confirmed_paid"
	StateCompleted                State = "completed"
	StateCancelled                State = "cancelled"
)

func (s State) String() string {
	return string(s)
}

func (s State) IsValid() bool {
	switch s {
	case StatePendingUnpaid, StatePendingPaid, StateConfirmedAwaitingPayment,
		StateConfirmedPaid, StateCompleted, StateCancelled:
		return true
	default:
		return false
	}
}

// IsActive reports whether the booking still occupies its slot.
func (s State) IsActive() bool {
	return s != StateCancelled
}

// Status projects the tagged state onto the external status field.
func (s State) Status() string {
	switch s {
	case StatePendingUnpaid, StatePendingPaid:
		return "pending"
	case StateConfirmedAwaitingPayment, StateConfirmedPaid:
		return "confirmed"
	case StateCompleted:
		return "completed"
	case StateCancelled:
		return "cancelled"
	default:
		return ""
	}
}

// PaymentStatus projects the tagged state onto the external paymentStatus field.
func (s State) PaymentStatus() string {
	switch s {
	case StatePendingPaid, StateConfirmedPaid, StateCompleted:
		return "paid"
	default:
		return "unpaid"
	}
}

func (s State) canTransitionTo(next State) bool {
	switch s {
	case StatePendingUnpaid:
		return next == StatePendingPaid || next == StateConfirmedAwaitingPayment || next == StateCancelled
	case StatePendingPaid:
		return next == StateConfirmedPaid || next == StateCancelled
	case StateConfirmedAwaitingPayment:
		return next == StateConfirmedPaid || next == StateCancelled
	case StateConfirmedPaid:
		return next == StateCompleted || next == StateCancelled
	default:
		return false
	}
}

type MembershipCategory string

const (
	MembershipNone    MembershipCategory = "none"
	MembershipGeneral MembershipCategory = "general"
	MembershipLife    MembershipCategory = "life"
)

func (m MembershipCategory) String() string {
	return string(m)
}

func (m MembershipCategory) IsValid() bool {
	switch m {
	case MembershipNone, MembershipGeneral, MembershipLife:
		return true
	default:
		return false
	}
}

// lifeMemberGroups are the identity-provider group tags that confer the
// life-member discount regardless of the declared membership category.
var lifeMemberGroups = map[string]struct{}{
	"AnmcLifeMembers": {},
	"LifeMembers":     {},
}

// EffectiveMembership resolves the category to capture on a booking. A life
// tier in the user's groups upgrades the category; it is resolved once at
// creation and never re-derived afterwards.
func EffectiveMembership(declared MembershipCategory, groups []string) MembershipCategory {
	if declared == MembershipLife {
		return MembershipLife
	}
	for _, g := range groups {
		if _, ok := lifeMemberGroups[g]; ok {
			return MembershipLife
		}
	}
	if declared.IsValid() {
		return declared
	}
	return MembershipNone
}
