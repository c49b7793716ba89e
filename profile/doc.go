// Package profile adds runtime profiling to CLI applications.
//
// It writes CPU, heap, goroutine, block and mutex profiles to the paths given
// on the command line. Use [Config.RegisterFlags] to add the flags and wrap
// command execution with a [Session]:
//
//	cfg := profile.NewConfig()
//	cfg.RegisterFlags(rootCmd.PersistentFlags())
//
//	session, err := cfg.Start()
//	// Run the command.
//	stopErr := session.Stop()
//
// Users can then enable profiling via flags like --cpu-profile=cpu.prof.
package profile
