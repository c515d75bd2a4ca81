package bvh

import (
	"github.com/polyhull/collide/util/logger"
)

var log = logger.New("BVH", logger.Default)
