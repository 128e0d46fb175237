// Package timezone pins every calendar computation to the application
// timezone configured by APP_TIMEZONE (IANA names such as "UTC" or
// "Europe/Lisbon"). It is initialized when the package is imported.
//
// Bookings are day granular: check-in and checkout are midnights produced by
// StartOfDay, Date or ParseDay, and DaysBetween counts nights between them.
//
//	checkIn, _ := timezone.ParseDay("2024-06-10")
//	checkOut := timezone.Date(2024, time.June, 14)
//	nights := timezone.DaysBetween(checkIn, checkOut) // 4
package timezone
