// Package logger builds structured slog loggers and provides attribute helpers.
//
//	log := logger.New(
//		logger.WithProduction("itemdesk"),
//		logger.WithFileOutput("/var/log/itemdesk.log", 10, 3),
//		logger.WithContextExtractors(middleware.RequestIDExtractor),
//	)
//
//	log.Info("server started", logger.Component("server"), logger.Event("startup"))
//
// Context extractors run on every record logged with a *Context method, so
// request-scoped values (request id, user id) are attached automatically.
//
// Attribute helpers return an empty slog.Attr for nil input, which slog
// drops, so logger.Error(err) is safe to pass without a nil check.
package logger
