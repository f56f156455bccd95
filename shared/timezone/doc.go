// Package timezone resolves the application timezone and turns request dates into calendar days.
//
// Usage:
//
//	day, err := timezone.ParseDate("2024-01-01")   // calendar day at midnight UTC
//	nights := timezone.DaysBetween(checkIn, checkOut)
//
// The timezone is read from APP_TIMEZONE when the package is imported and falls back to UTC.
// Use IANA names such as "UTC", "Asia/Jakarta" or "Europe/London".
package timezone
