package providers

import (
	"github.com/smallbiznis/landedcost/internal/providers/pdf"
	"github.com/smallbiznis/landedcost/internal/providers/spreadsheet"
	"go.uber.org/fx"
)

var Module = fx.Module("providers",
	pdf.Module,
	spreadsheet.Module,
)
