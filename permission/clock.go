package permission

import "time"

// nowFunc is indirected so tests can pin "now" without sleeping around
// real expiries.
var nowFunc = time.Now
