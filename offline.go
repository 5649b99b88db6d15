package modsynth

import (
	"encoding/binary"
	"math"
)

// RenderSamples runs the rack offline for the given duration and returns
// interleaved stereo float32 samples. It drives the same Process path as
// live playback, so it can be resumed or mixed with a later Start.
func RenderSamples(r *Rack, seconds float64) []float32 {
	frames := int(SampleRate * seconds)
	out := make([]float32, frames*2)
	r.Process(out)
	return out
}

// EncodeWAVFloat32LE wraps interleaved float32 samples in a WAV (IEEE float)
// container.
func EncodeWAVFloat32LE(samples []float32, sampleRate, channels int) []byte {
	const headerSize = 44
	dataSize := len(samples) * 4
	byteRate := sampleRate * channels * 4
	blockAlign := channels * 4

	out := make([]byte, headerSize+dataSize)
	copy(out[0:], []byte("RIFF"))
	binary.LittleEndian.PutUint32(out[4:], uint32(headerSize-8+dataSize))
	copy(out[8:], []byte("WAVE"))
	copy(out[12:], []byte("fmt "))
	binary.LittleEndian.PutUint32(out[16:], 16)
	binary.LittleEndian.PutUint16(out[20:], 3) // IEEE float
	binary.LittleEndian.PutUint16(out[22:], uint16(channels))
	binary.LittleEndian.PutUint32(out[24:], uint32(sampleRate))
	binary.LittleEndian.PutUint32(out[28:], uint32(byteRate))
	binary.LittleEndian.PutUint16(out[32:], uint16(blockAlign))
	binary.LittleEndian.PutUint16(out[34:], 32)
	copy(out[36:], []byte("data"))
	binary.LittleEndian.PutUint32(out[40:], uint32(dataSize))
	for i, s := range samples {
		binary.LittleEndian.PutUint32(out[headerSize+i*4:], math.Float32bits(s))
	}
	return out
}
