// ABOUTME: Linear sample rate conversion and channel remixing
// ABOUTME: Adapts decoded files to the rate and channel layout of an open device
package resample

// Convert resamples interleaved frames from inputRate to outputRate by
// linear interpolation. The last input frame is only an interpolation endpoint.
func Convert(samples []int32, inputRate, outputRate, channels int) []int32 {
	if inputRate == outputRate || inputRate <= 0 || outputRate <= 0 || channels <= 0 {
		return samples
	}

	frames := len(samples) / channels
	ratio := float64(inputRate) / float64(outputRate)
	outFrames := int(float64(frames) / ratio)

	out := make([]int32, 0, outFrames*channels)
	for i := 0; i < outFrames; i++ {
		pos := float64(i) * ratio
		idx := int(pos)
		if idx >= frames-1 {
			break
		}

		frac := pos - float64(idx)
		cur := samples[idx*channels : (idx+1)*channels]
		next := samples[(idx+1)*channels : (idx+2)*channels]
		for c := range cur {
			out = append(out, int32(float64(cur[c])*(1-frac)+float64(next[c])*frac))
		}
	}
	return out
}

// Remix maps interleaved frames from one channel count to another.
// Downmixing to mono averages the channels; otherwise output channel c copies input channel c mod from.
func Remix(samples []int32, from, to int) []int32 {
	if from == to || from <= 0 || to <= 0 {
		return samples
	}

	frames := len(samples) / from
	out := make([]int32, frames*to)
	for f := 0; f < frames; f++ {
		in := samples[f*from : (f+1)*from]
		if to == 1 {
			var sum int64
			for _, s := range in {
				sum += int64(s)
			}
			out[f] = int32(sum / int64(from))
			continue
		}
		for c := 0; c < to; c++ {
			out[f*to+c] = in[c%from]
		}
	}
	return out
}
