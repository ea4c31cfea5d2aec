package clock

import "go.uber.org/fx"

// Module provides the system clock to the fx container.
var Module = fx.Provide(New)
