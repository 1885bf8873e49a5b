// Package chart renders dataset tables as horizontal bar charts and scatter
// plots with currency-formatted axes.
//
// Rendering is split from encoding: Render builds a gonum plot from a table
// and a Spec, and Chart.Encode writes it as PNG or SVG at a requested size.
// Currency labels come from an explicit money.Formatter carried on the
// Spec, never from process locale state.
package chart
