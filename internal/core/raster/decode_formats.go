package raster

import (
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
)
