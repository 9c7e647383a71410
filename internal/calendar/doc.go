// Package calendar provides the gateway to the remote CalDAV calendar store.
//
// The gateway translates structured intents into calendar-protocol
// operations (insert, delete-by-id, range-query) and protocol responses back
// into plain event records. It owns the (de)serialization to the iCalendar
// VEVENT format and applies the operational-timezone normalization to every
// timestamp crossing the protocol boundary.
//
// Events are never cached locally: every read re-fetches from the store.
//
// Example usage:
//
//	tz, _ := timezone.NewNormalizer("Asia/Dubai")
//	client, err := calendar.NewClient(ctx, cfg, tz)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	events, err := client.ListEvents(ctx, time.Now(), time.Now().Add(24*time.Hour))
package calendar
