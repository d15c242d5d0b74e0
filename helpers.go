package newsdesk

import (
	"time"
)

// NowFunc is the clock used for timestamps and the breaking news window. Tests replace it.
var NowFunc func() time.Time = time.Now
