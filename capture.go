// capture.go implements the capture actor: the AudioIO frame callback
// copies the delivered buffer and performs a non-blocking bounded-channel
// send to the processing actor, dropping the frame (ExecutorRejected)
// rather than ever blocking the driver's callback thread.

package sondar

// captureQueueDepth bounds the channel between the capture callback and
// the processing loop. One in flight plus two queued is enough slack for
// the processing actor to keep up without letting capture build unbounded
// backlog; anything beyond that is back-pressure the spec requires be
// resolved by dropping, not blocking.
const captureQueueDepth = 2

// startCapture wires driver's frame callback to send into frames,
// non-blocking. It returns the function suitable for AudioIO.StartCapture.
func startCapture(frames chan<- RealFrame, onDrop func()) func(RealFrame) {
	return func(f RealFrame) {
		cp := make(RealFrame, len(f))
		copy(cp, f)

		select {
		case frames <- cp:
		default:
			if onDrop != nil {
				onDrop()
			}
		}
	}
}
