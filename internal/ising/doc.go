// Package ising implements Metropolis Monte Carlo simulation of the
// two-dimensional Ising model on a periodic square lattice.
//
// The package defines the core simulation primitives:
//
//   - [Model]: an N×N lattice of ±1 spins with its physical parameters
//   - [Params]: size, temperature, coupling J and external field h
//   - [Result]: per-step energy and magnetization series from a run
//   - [Metric]: streaming observable interface, observed once per step
//   - [Ensemble]: independent seeded replicas run concurrently
//
// # Conventions
//
// Temperatures are measured in reduced units of J/k_B, i.e. k_B = 1.
// The Hamiltonian counts each bond once:
//
//	E = -J Σ s(i,j)·[s(i+1,j) + s(i,j+1)] - h Σ s(i,j)
//
// with indices wrapped modulo N. Simulate performs elementary
// single-flip steps (not sweeps) and records one series point per
// step. Magnetization accessors report the per-site mean of the spins.
//
// # Thread Safety
//
// Model instances are NOT thread-safe: every step depends on the
// lattice produced by the previous one. For parallel statistics, use
// [Ensemble], which runs independent models on separate seeds.
package ising
