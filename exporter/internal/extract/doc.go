// Package extract pulls numeric tokens out of the meter's HTML pages.
//
// Each Class is bound to a matcher in a fixed table built at package
// initialisation. Unit classes (volts, amps, kilowatts, kva, kvar, percent,
// hertz) match a decimal number followed by a space and the unit marker;
// percent also accepts a leading minus. The bare-number class walks the markup
// with the x/net/html tokenizer and keeps text nodes that are nothing but a
// number, which is how the power-quality and revenue pages render values.
// HTML comments are tokenized as well, so commented-out cells keep counting
// toward the ordinals.
//
// The kva pattern also matches the kVA prefix of kVAR readings. Ordinals in
// the schema account for this, so the pattern is kept as it is.
package extract
