// Package resource bounds the memory and concurrency used while building
// pairwise matrices.
//
// A parallel build holds one dense block buffer per in-flight worker. The
// Controller reserves that memory before a block is computed and releases it
// once the block has been merged, so a configured limit caps the peak
// footprint of partial results:
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes: 256 << 20,
//	    MaxWorkers:       8,
//	})
//
//	if err := rc.AcquireWorker(ctx); err != nil {
//	    return err
//	}
//	defer rc.ReleaseWorker()
//
// # Nil Safety
//
// All methods handle a nil Controller gracefully; they become no-ops.
package resource
