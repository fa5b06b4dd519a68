/*
Package seamcarve is a content aware image reduction library. It shrinks the source image
to a smaller width and height by repeatedly removing the connected path of pixels
(the seam) with the lowest energy, instead of cropping or scaling it uniformly.

The width is reduced first by removing vertical seams, then the height by removing
horizontal seams, which are obtained by transposing the image.

The package provides a command line interface, which prompts for the new dimensions:

	$ seamcarve image.jpg

In case you wish to integrate the API in a self constructed environment here is a simple example:

	package main

	import (
		"fmt"
		"github.com/seamcarve/seamcarve"
	)

	func main() {
		res, err := seamcarve.Resize(img, 640, 480)
		if err != nil {
			fmt.Printf("Error rescaling image: %s", err.Error())
		}
	}
*/
package seamcarve
