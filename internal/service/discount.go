package service

import "unicode/utf16"

// DiscountCampaignFlag gates the allow-list part of discount eligibility.
const DiscountCampaignFlag = "DISCOUNT_CAMPAIGN"

const (
	cohortBuckets = 100
	cohortCutoff  = 20 // buckets [0, 20) are in the cohort
)

// discountAllowList receives the discount while DISCOUNT_CAMPAIGN is on.
var discountAllowList = map[string]struct{}{
	"199001011234": {},
	"190101010023": {},
}

// CohortHash is a 32-bit polynomial hash over the UTF-16 code units of s:
// h = 31*h + c starting from 0, wrapping on overflow. It matches Java's
// String.hashCode bit for bit so existing cohort assignments stay stable.
func CohortHash(s string) int32 {
	var h int32
	for _, c := range utf16.Encode([]rune(s)) {
		h = 31*h + int32(c)
	}
	return h
}

// CohortBucket maps s to [0, 100). The remainder is taken before the
// absolute value, so negative hashes land on |h % 100|.
func CohortBucket(s string) int {
	b := int(CohortHash(s) % cohortBuckets)
	if b < 0 {
		b = -b
	}
	return b
}

// InCohort reports whether s falls in the 20% rollout cohort. It does not
// depend on any flag.
func InCohort(s string) bool {
	return CohortBucket(s) < cohortCutoff
}

func inAllowList(personalNumber string) bool {
	_, ok := discountAllowList[personalNumber]
	return ok
}

// IsEligible combines the cohort rule with the flag-gated allow-list.
func IsEligible(personalNumber string, campaignEnabled bool) bool {
	return InCohort(personalNumber) || (campaignEnabled && inAllowList(personalNumber))
}

// DiscountedTotal applies the 10% discount to a non-negative total, rounded
// half-up to a whole unit. Integer arithmetic keeps 0.9 from drifting.
func DiscountedTotal(total int) int {
	return (total*9 + 5) / 10
}
