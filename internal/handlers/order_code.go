package handlers

import (
	"fmt"
	"math/rand"
	"regexp"
	"time"
)

// Order codes look like TRY-20240131-482913: the creation date plus six
// random digits. Uniqueness is guaranteed by the orderCode unique index;
// callers retry with a fresh draw on a duplicate-key insert.
var orderCodePattern = regexp.MustCompile(`^TRY-\d{8}-\d{6}$`)

func generateOrderCode(now time.Time) string {
	return fmt.Sprintf("TRY-%s-%06d", now.Format("20060102"), rand.Intn(1000000))
}
