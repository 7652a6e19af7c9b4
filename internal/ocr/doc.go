// Package ocr provides optical character recognition using Tesseract.
//
// Recognize wraps the Tesseract engine (via gosseract/v2). Images are passed
// to Tesseract in memory as PNG, so no temporary files are written. An
// optional preprocessing chain built on cvhelper (gray conversion, median
// denoising, Otsu binarization) improves results on photographed or noisy
// input; Prepare exposes that chain on its own.
//
// # Prerequisites
//
// The Tesseract library and its language data must be installed:
//   - Ubuntu/Debian: apt-get install libtesseract-dev tesseract-ocr-eng
//   - macOS: brew install tesseract
//
// The default language is English ("eng"). Other languages use their
// Tesseract codes, for example "deu", "fra" or "deu+eng".
package ocr
