package cfgloader

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/rise-and-shine/mediator/mask"
)

func printConfig(config any) {
	var b strings.Builder
	for pair := mask.StructToOrdMap(config).Oldest(); pair != nil; pair = pair.Next() {
		fmt.Fprintf(&b, "  %s: %v\n", pair.Key, pair.Value)
	}
	slog.Info(fmt.Sprintf("Loaded config:\n%s", b.String()))
}
