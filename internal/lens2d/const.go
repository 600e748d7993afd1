package lens2d

const (
	Epsilon  = 1e-4   // tolerance for on-circle checks and grazing incidence
	NAir     = 1.0    // refractive index of air
	NGlass   = 1.5168 // refractive index of the lens glass (wavelength independent)
	GIFOut   = "sweep.gif"
	GIFDelay = 20 // 100ths of a second per frame
	Gamma    = 1.0
	PNGScale = 32 // output pixels per sensor pixel
	// NumShards must stay a power of two, pixelLocks masks with it.
	NumShards    = 256
	DiagramRays  = 15
	DiagramSize  = 1024
	SweepFrames  = 24
	ProbeRays    = 1_000
	paraxialTilt = 1e-3 // radians, ray used to locate the paraxial image plane
)
