// Package observable provides decorators that instrument command and query handlers
// with metrics, tracing and logging while the wrapped handlers stay pure business workflows.
//
// The wrappers are applied explicitly at wiring time:
//
//	coreHandler := lendbook.NewCommandHandler(store)
//
//	handler, err := observable.NewCommandWrapper[lendbook.Command, lendbook.Result](
//		coreHandler,
//		observable.WithCommandMetrics[lendbook.Command, lendbook.Result](metricsCollector),
//		observable.WithCommandTracing[lendbook.Command, lendbook.Result](tracingCollector),
//		observable.WithCommandContextualLogging[lendbook.Command, lendbook.Result](contextualLogger),
//	)
//
// Every outcome is classified as success (or the business outcome the result reports),
// rejected, canceled, timeout or error. Rejections are expected business outcomes,
// they are logged at warn level and counted separately from technical errors.
//
// Unit tests of business logic use the core handlers without any wrapper.
package observable
