package txbuilder

import (
	"github.com/btcprivate/btcptx/infrastructure/logger"
)

var log = logger.RegisterSubSystem("TXBL")
