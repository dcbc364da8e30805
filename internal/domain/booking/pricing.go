package booking

// Pricing rules. The life-member discount is 10% of the service amount; the
// cleaning fee is a flat surcharge once the party size passes the threshold
// and is never discounted.
const (
	lifeMemberDiscountPercent = 10
	CleaningFeeThreshold      = 21
)

// Quote is the itemized price breakdown for a booking. Total is always
// re-derivable from the parts.
type Quote struct {
	ServiceAmount      Money
	Discount           Money
	DiscountedAmount   Money
	CleaningFeeApplied bool
	CleaningFee        Money
	Total              Money
}

// CleaningFeeRequired reports whether the flat fee applies for a party size.
// Callers use this to decide whether a catalog lookup is needed at all.
func CleaningFeeRequired(numberOfPeople int) bool {
	return numberOfPeople > CleaningFeeThreshold
}

// ComputeQuote prices a booking. The membership category must already be the
// effective one captured at creation; cleaningFee is only charged when the
// party size is over the threshold.
func ComputeQuote(serviceAmount Money, numberOfPeople int, membership MembershipCategory, cleaningFee Money) Quote {
	q := Quote{ServiceAmount: serviceAmount, DiscountedAmount: serviceAmount}

	if membership == MembershipLife {
		q.DiscountedAmount, q.Discount = serviceAmount.ApplyPercentDiscount(lifeMemberDiscountPercent)
	}

	if CleaningFeeRequired(numberOfPeople) {
		q.CleaningFeeApplied = true
		q.CleaningFee = cleaningFee
	}

	q.Total = q.DiscountedAmount
	if q.CleaningFeeApplied {
		q.Total = q.Total.Add(q.CleaningFee)
	}
	return q
}
