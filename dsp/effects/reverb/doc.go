// Package reverb provides a convolution reverb built on the streaming
// convolver in package conv.
package reverb
