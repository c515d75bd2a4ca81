package batch

import (
	"github.com/polyhull/collide/util/logger"
)

var log = logger.New("BATCH", logger.Default)
