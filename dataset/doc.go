// Package dataset indexes a flat directory of labeled audio samples.
//
// File names carry their class label: with the default rule a file named
// "1-100038-A-14.wav" belongs to class "14". Files the rule cannot label
// are reported in Index.Excluded and never placed under any class.
package dataset
