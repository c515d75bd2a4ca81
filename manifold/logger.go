package manifold

import (
	"github.com/polyhull/collide/util/logger"
)

var log = logger.New("MANIFOLD", logger.Default)
