package txscript

import (
	"github.com/btcprivate/btcptx/infrastructure/logger"
)

var log = logger.RegisterSubSystem("TXSC")
