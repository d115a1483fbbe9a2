package payroll

import (
	"fmt"
	"time"

	"github.com/driveline-dms/payroll-backend-go/internal/domain/payroll"
)

// The schedule resolver turns a dealer's pay-frequency configuration into
// concrete period boundaries and pay dates. All functions are pure over
// (settings, now); callers pass time.Now() in production and fixed instants in
// tests.

// ResolvePeriod returns the pay period that a run executed at `now` covers.
//
// weekly      - the last complete Sunday-to-Saturday week before now.
// biweekly    - a 14-day window on the same Saturday cadence.
// semimonthly - one of three windows picked by comparing now's day of month
//               against pay_day_2 (first-half boundary) and pay_day_1
//               (second-half boundary): second half of the prior month, first
//               half of this month, or second half of this month.
// monthly     - the full previous calendar month.
func ResolvePeriod(settings payroll.PaySettings, now time.Time) (payroll.PayPeriod, error) {
	day := dateOf(now)

	switch settings.Frequency {
	case payroll.FrequencyWeekly:
		end := lastSaturdayBefore(day)
		return payroll.PayPeriod{Start: end.AddDate(0, 0, -6), End: end}, nil

	case payroll.FrequencyBiWeekly:
		end := lastSaturdayBefore(day)
		return payroll.PayPeriod{Start: end.AddDate(0, 0, -13), End: end}, nil

	case payroll.FrequencySemiMonthly:
		payDay1, payDay2 := payDaysOrDefault(settings)
		year, month, _ := day.Date()
		switch {
		case day.Day() <= payDay2:
			// Paying the second half of the prior month.
			prior := day.AddDate(0, 0, -day.Day()) // last day of prior month
			return payroll.PayPeriod{
				Start: time.Date(prior.Year(), prior.Month(), 16, 0, 0, 0, 0, time.UTC),
				End:   prior,
			}, nil
		case day.Day() <= payDay1:
			return payroll.PayPeriod{
				Start: time.Date(year, month, 1, 0, 0, 0, 0, time.UTC),
				End:   time.Date(year, month, 15, 0, 0, 0, 0, time.UTC),
			}, nil
		default:
			return payroll.PayPeriod{
				Start: time.Date(year, month, 16, 0, 0, 0, 0, time.UTC),
				End:   lastDayOfMonth(year, month),
			}, nil
		}

	case payroll.FrequencyMonthly:
		firstOfThis := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
		return payroll.PayPeriod{
			Start: firstOfThis.AddDate(0, -1, 0),
			End:   firstOfThis.AddDate(0, 0, -1),
		}, nil
	}

	return payroll.PayPeriod{}, payroll.ErrInvalidPayFrequency
}

// ResolveNextPayDate returns the next pay date strictly after now.
func ResolveNextPayDate(settings payroll.PaySettings, now time.Time) (time.Time, error) {
	day := dateOf(now)

	switch settings.Frequency {
	case payroll.FrequencyWeekly, payroll.FrequencyBiWeekly:
		// Next Friday strictly after now; a Friday rolls to the next week.
		offset := (int(time.Friday) - int(day.Weekday()) + 7) % 7
		if offset == 0 {
			offset = 7
		}
		return day.AddDate(0, 0, offset), nil

	case payroll.FrequencySemiMonthly:
		payDay1, payDay2 := payDaysOrDefault(settings)
		year, month, _ := day.Date()
		switch {
		case day.Day() < payDay2:
			return clampedDate(year, month, payDay2), nil
		case day.Day() < payDay1:
			return clampedDate(year, month, payDay1), nil
		default:
			next := day.AddDate(0, 1, 0)
			return clampedDate(next.Year(), next.Month(), payDay2), nil
		}

	case payroll.FrequencyMonthly:
		payDay1, _ := payDaysOrDefault(settings)
		year, month, _ := day.Date()
		if day.Day() < payDay1 {
			return clampedDate(year, month, payDay1), nil
		}
		next := day.AddDate(0, 1, 0)
		return clampedDate(next.Year(), next.Month(), payDay1), nil
	}

	return time.Time{}, payroll.ErrInvalidPayFrequency
}

// DescribeSchedule returns a human label for the schedule configuration.
func DescribeSchedule(settings payroll.PaySettings) (string, error) {
	payDay1, payDay2 := payDaysOrDefault(settings)

	switch settings.Frequency {
	case payroll.FrequencyWeekly:
		return "Weekly, paid on Fridays", nil
	case payroll.FrequencyBiWeekly:
		return "Bi-weekly, paid on Fridays", nil
	case payroll.FrequencySemiMonthly:
		return fmt.Sprintf("Semi-monthly, paid on the %s and %s", ordinal(payDay2), ordinal(payDay1)), nil
	case payroll.FrequencyMonthly:
		return fmt.Sprintf("Monthly, paid on the %s", ordinal(payDay1)), nil
	}

	return "", payroll.ErrInvalidPayFrequency
}

// payDaysOrDefault falls back to the standard 5/20 boundaries when the dealer
// never configured them. A zero value is "unset", not a configured day.
func payDaysOrDefault(settings payroll.PaySettings) (payDay1, payDay2 int) {
	payDay1, payDay2 = settings.PayDay1, settings.PayDay2
	if payDay1 == 0 {
		payDay1 = payroll.DefaultPayDay1
	}
	if payDay2 == 0 {
		payDay2 = payroll.DefaultPayDay2
	}
	return payDay1, payDay2
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func lastSaturdayBefore(day time.Time) time.Time {
	offset := (int(day.Weekday()) - int(time.Saturday) + 7) % 7
	if offset == 0 {
		offset = 7
	}
	return day.AddDate(0, 0, -offset)
}

func lastDayOfMonth(year int, month time.Month) time.Time {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1)
}

// clampedDate keeps configured pay days like 30 or 31 valid in short months.
func clampedDate(year int, month time.Month, day int) time.Time {
	if last := lastDayOfMonth(year, month); day > last.Day() {
		return last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func ordinal(n int) string {
	suffix := "th"
	switch {
	case n%100 >= 11 && n%100 <= 13:
		// 11th, 12th, 13th
	case n%10 == 1:
		suffix = "st"
	case n%10 == 2:
		suffix = "nd"
	case n%10 == 3:
		suffix = "rd"
	}
	return fmt.Sprintf("%d%s", n, suffix)
}
