// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package gen contains generators for truth tables and networks
// used as synthesis targets.
//
// Package gen also supplies a delaying backend, which solves
// after a random period of time.
package gen
