package cli

import "go.uber.org/fx"

// Module provides the cobra client
var Module = fx.Provide(NewCLI)
