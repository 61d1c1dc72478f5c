// Package queue carries notifications that failed to send on the request
// path to a background consumer that retries them.
package queue

import "go-storefront/utils"

// NotificationJob is one pending email and how many deliveries were tried
type NotificationJob struct {
	Email    utils.Email `json:"email"`
	Attempts int         `json:"attempts"`
}
