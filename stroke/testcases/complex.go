// seehuhn.de/go/armdraw - line drawings with a robot arm
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package testcases

var complexCases = []TestCase{
	{
		Name:    "spiral",
		Width:   128,
		Height:  128,
		Pixels:  spiral(64, 64, 6, 9),
		Strokes: -1,
	},
	{
		Name:   "house",
		Width:  64,
		Height: 64,
		Pixels: concat(
			rectangle(12, 30, 52, 58),
			line(12, 30, 32, 8),
			line(32, 8, 52, 30),
			rectangle(28, 44, 36, 58),
		),
		Strokes: -1,
	},
	{
		Name:   "face",
		Width:  96,
		Height: 96,
		Pixels: concat(
			circle(48, 48, 40),
			circle(34, 38, 5),
			circle(62, 38, 5),
			line(32, 66, 48, 72),
			line(48, 72, 64, 66),
		),
		Strokes: -1,
	},
}
