// Package pdf implements document.Writer on top of go-pdf/fpdf and reads
// documents back with pdfcpu to verify what was written.
//
// Pages are laid out in millimeters. Images are embedded as PNG or JPEG
// without re-encoding; text uses the built-in Helvetica face with the
// cp1252 translator, so characters outside that code page are replaced.
package pdf
