package pointcloud

import (
	"go.viam.com/scalarcloud/capacity"
	"go.viam.com/scalarcloud/logging"
)

// cloudOpts are set by the Option values passed to New.
type cloudOpts struct {
	// logger receives debug output about sanitized points and failed resizes.
	logger logging.Logger

	// alloc is consulted before the point sequence or any scalar field grows.
	alloc capacity.Allocator

	// prealloc is the initial capacity of the point sequence.
	prealloc int
}

// Option configures a PointCloud.
type Option interface {
	apply(*cloudOpts)
}

// funcOption wraps a function that modifies cloudOpts into an implementation of the
// Option interface.
type funcOption struct {
	f func(*cloudOpts)
}

func (fo *funcOption) apply(o *cloudOpts) {
	fo.f(o)
}

func newFuncOption(f func(*cloudOpts)) *funcOption {
	return &funcOption{
		f: f,
	}
}

// WithLogger returns an Option that sets the logger of the cloud.
func WithLogger(logger logging.Logger) Option {
	return newFuncOption(func(o *cloudOpts) {
		o.logger = logger
	})
}

// WithAllocator returns an Option that sets the allocator shared by the point sequence and
// every scalar field created by the cloud.
func WithAllocator(alloc capacity.Allocator) Option {
	return newFuncOption(func(o *cloudOpts) {
		o.alloc = alloc
	})
}

func defaultCloudOpts() cloudOpts {
	return cloudOpts{
		logger: logging.Global().Sublogger("pointcloud"),
		alloc:  capacity.Heap(),
	}
}
