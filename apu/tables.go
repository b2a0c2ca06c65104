package apu

// lengthTable maps a 5-bit length-counter load value to its initial
// counter value (the fixed table every NES APU implementation hardcodes).
var lengthTable = [32]uint8{
	10, 254, 20, 2, 40, 4, 80, 6, 160, 8, 60, 10, 14, 12, 26, 14,
	12, 16, 24, 18, 48, 20, 96, 22, 192, 24, 72, 26, 16, 28, 32, 30,
}

// dutyTable holds the 8-step waveform for each of the 4 pulse duty modes.
var dutyTable = [4][8]uint8{
	{0, 1, 0, 0, 0, 0, 0, 0},
	{0, 1, 1, 0, 0, 0, 0, 0},
	{0, 1, 1, 1, 1, 0, 0, 0},
	{1, 0, 0, 1, 1, 1, 1, 1},
}

// triangleSequence is the 32-step descending-then-ascending ramp.
var triangleSequence = [32]uint8{
	15, 14, 13, 12, 11, 10, 9, 8, 7, 6, 5, 4, 3, 2, 1, 0,
	0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15,
}

var noisePeriodNTSC = [16]uint16{4, 8, 16, 32, 64, 96, 128, 160, 202, 254, 380, 508, 762, 1016, 2034, 4068}
var noisePeriodPAL = [16]uint16{4, 8, 14, 30, 60, 88, 118, 148, 188, 236, 354, 472, 708, 944, 1890, 3778}

var dmcRateNTSC = [16]uint16{428, 380, 340, 320, 286, 254, 226, 214, 190, 160, 142, 128, 106, 84, 72, 54}
var dmcRatePAL = [16]uint16{398, 354, 316, 298, 276, 236, 210, 198, 176, 148, 131, 118, 98, 78, 66, 50}

// Frame-sequencer step boundaries, in CPU cycles since the sequencer was
// last reset. https://www.nesdev.org/wiki/APU_Frame_Counter
var frameSeqNTSC4 = [4]uint64{7457, 14913, 22371, 29829}
var frameSeqNTSC5 = [5]uint64{7457, 14913, 22371, 29829, 37281}
var frameSeqPAL4 = [4]uint64{8313, 16627, 24939, 33253}
var frameSeqPAL5 = [5]uint64{8313, 16627, 24939, 33253, 41565}
