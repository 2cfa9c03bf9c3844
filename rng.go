package main

import "math/rand/v2"

// defaultSeed replaces a zero seed so that the zero Params value stays reproducible.
const defaultSeed uint64 = 1

// mixSeed is a SplitMix64 finalizer over a parent seed and a stream id.
// Neighbouring stream ids yield uncorrelated seeds.
func mixSeed(parent, stream uint64) uint64 {
	x := parent ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

// streamRNG returns an independent generator for one stream of a seeded run.
// A *rand.Rand is not safe for concurrent use; every attempt gets its own.
func streamRNG(seed, stream uint64) *rand.Rand {
	if seed == 0 {
		seed = defaultSeed
	}
	return rand.New(rand.NewPCG(mixSeed(seed, stream), stream))
}
