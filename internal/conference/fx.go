package conference

import (
	conferencedomain "github.com/adrianolorenzi02/conferencia-compra/internal/conference/domain"
	"github.com/adrianolorenzi02/conferencia-compra/internal/conference/service"
	"go.uber.org/fx"
)

var Module = fx.Module("conference",
	fx.Provide(service.NewSession),
	fx.Provide(func(s *service.Session) conferencedomain.Service { return s }),
)
