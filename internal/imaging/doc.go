// Package imaging provides the pure raster transforms behind the avatar
// pipeline: kernel convolution, color adjustment, downscaling, face-centered
// cropping and circular alpha masking.
//
// All transforms operate on non-premultiplied *image.NRGBA buffers, take no
// locks, perform no I/O and never mutate their input.
package imaging
