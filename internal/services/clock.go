package services

import "time"

// nowFunc is swapped in tests to control timestamps
var nowFunc = time.Now
