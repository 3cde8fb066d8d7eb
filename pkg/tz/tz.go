package tz

import "time"

// Kolkata is the Asia/Kolkata location (IST, no DST). Event dates and
// times entered by admins are wall-clock times in this zone.
var Kolkata *time.Location

func init() {
	var err error
	Kolkata, err = time.LoadLocation("Asia/Kolkata")
	if err != nil {
		panic("tz: load Asia/Kolkata: " + err.Error())
	}
}
