package lens2d

var (
	Debug    = false // set to true for per-ray outcome logging and progress output
	UseLocks = true  // set to false to disable sharded locks around sensor writes
	Workers  = 0     // number of sampling goroutines, 0 means runtime.NumCPU()
)
