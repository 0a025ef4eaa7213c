// Airtime - TV Schedule Analytics and Program Recommendations
// Copyright 2026 Airtime Analytics
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/airtime-analytics/airtime

package schedule

// BucketOther is the catch-all bucket for slots outside every labeled window
// or with an unknown start time.
const BucketOther = "other"

// Buckets lists the labeled hour buckets in chronological order, excluding
// the catch-all. Note that 19-21 and 20-22 overlap: both describe prime-time
// windows in the source data, and hour 20 always resolves to 19-21.
var Buckets = []string{"08-10", "10-12", "12-14", "14-17", "17-19", "19-21", "20-22"}

// HourBucket maps an hour of day to its slot bucket.
func HourBucket(hour int) string {
	switch {
	case hour >= 8 && hour < 10:
		return "08-10"
	case hour >= 10 && hour < 12:
		return "10-12"
	case hour >= 12 && hour < 14:
		return "12-14"
	case hour >= 14 && hour < 17:
		return "14-17"
	case hour >= 17 && hour < 19:
		return "17-19"
	case hour >= 19 && hour < 21:
		return "19-21"
	case hour >= 21 && hour < 22:
		return "20-22"
	default:
		return BucketOther
	}
}

// BucketFromTime maps a start time to its slot bucket, "other" when the time
// is unknown.
func BucketFromTime(t *TimeOfDay) string {
	if t == nil {
		return BucketOther
	}
	return HourBucket(t.Hour)
}

// ValidBucket reports whether b is a recognized bucket label.
func ValidBucket(b string) bool {
	if b == BucketOther {
		return true
	}
	for _, known := range Buckets {
		if b == known {
			return true
		}
	}
	return false
}
