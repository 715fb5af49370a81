package duel

import "github.com/go-logr/logr"

var internalLogger = logr.Discard()

func SetInternalLogger(logger logr.Logger) {
	internalLogger = logger.WithName("duel")
}
