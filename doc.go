/*
Package linetrack maps between byte offsets and line numbers of a text.

Line Tracking

Editors, compilers and language servers constantly have to answer two
questions about a text: which line does a position belong to, and where
does a line start. A Tracker answers both of them without holding the text
itself. Clients report modifications and the tracker keeps its information
about lines up to date.

	tracker := linetrack.New(delimit.Default())
	tracker.Set("Hello\nWorld")
	tracker.Replace(5, 0, ",\nnew")          // "Hello,\nnew\nWorld"
	line, _ := tracker.LineNumberOfOffset(8) // 1

Lines are found by a delimiter scanner (see package delimit). Every line but
the last one ends with a delimiter, the last line never has one. An empty
text therefore consists of a single empty line.

A tracker starts with a plain sequence of lines, which is the cheapest
representation for texts which are read but never modified. On the first
modification it switches to a balanced tree of lines, where every operation
is O(log n) in the number of lines.

Package document combines a tracker with a gap buffer holding the text
(see package gap), and package textfile loads documents from files.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are met:

1. Redistributions of source code must retain the above copyright notice, this
list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright notice,
this list of conditions and the following disclaimer in the documentation
and/or other materials provided with the distribution.

3. Neither the name of the copyright holder nor the names of its
contributors may be used to endorse or promote products derived from
this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

*/
package linetrack
