// Package logconfig loads named logging configurations and hands out named
// loggers backed by rs/zerolog.
//
// A configuration is a JSON or YAML definition with three sections:
// formatters, handlers and loggers. Loading one registers its handlers under
// a fresh entry id and binds them to the declared logger names. Removing the
// entry detaches exactly those handlers again, from the registry and from
// every logger that held them, and closes their sinks.
//
// Key features
//   - Handler names are scoped per entry, so two configurations that both
//     declare a "console" handler coexist (a NameCollisionWarning is recorded)
//   - Console, plain file and rotating file (lumberjack) sinks, optionally
//     buffered through a zerolog diode
//   - Logger names form a dot-separated tree; records propagate to ancestors
//     up to the root logger ""
//   - Loggers resolve their handlers at write time: loads and removals apply
//     to handles obtained earlier
//   - Definitions come from embedded built-ins, directories or memory, and can
//     be hot reloaded with Watch
//
// Typical usage
//
//	reg := logconfig.New()
//	defer reg.Close()
//
//	file, err := reg.LoadConfig(logconfig.ConfigSpec{
//		Name:        "logging_file",
//		LogFilePath: "/var/log/app.log",
//		LogLevel:    "ERROR",
//	})
//	if err != nil { panic(err) }
//	_, _ = reg.LoadConfig(logconfig.ConfigSpec{Name: "logging_console"})
//
//	log := reg.GetLogger("app")
//	log.InfoWith().Str("user_id", id).Msg("processed")
//
//	_ = reg.RemoveConfig(file.ID)
package logconfig
