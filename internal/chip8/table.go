package chip8

import (
	chip8cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Table lists all CHIP-8 instruction definitions in decode priority order.
// A word decodes to the first matching entry, so codings with more fixed
// nibbles have to precede overlapping codings with fewer.
var Table = []Definition{
	newDefinition(OpCls, chip8cpu.ClsInst.Name, "", "00E0", KindUnused, KindUnused, KindUnused),
	newDefinition(OpRet, chip8cpu.RetInst.Name, "", "00EE", KindUnused, KindUnused, KindUnused),
	newDefinition(OpSys, "sys", "{d}", "0ddd", KindImmediate12, KindUnused, KindUnused),
	newDefinition(OpJump, chip8cpu.JpInst.Name, "{d}", "1ddd", KindImmediate12, KindUnused, KindUnused),
	newDefinition(OpCall, chip8cpu.CallInst.Name, "{d}", "2ddd", KindImmediate12, KindUnused, KindUnused),
	newDefinition(OpSkipEq, chip8cpu.SeInst.Name, "{d}, {s}", "3dss", KindRegister, KindImmediate8, KindUnused),
	newDefinition(OpSkipNeq, chip8cpu.SneInst.Name, "{d}, {s}", "4dss", KindRegister, KindImmediate8, KindUnused),
	newDefinition(OpSkipEq, chip8cpu.SeInst.Name, "{d}, {s}", "5ds0", KindRegister, KindRegister, KindUnused),
	newDefinition(OpLoad, chip8cpu.LdInst.Name, "{d}, {s}", "6dss", KindRegister, KindImmediate8, KindUnused),
	newDefinition(OpAdd, chip8cpu.AddInst.Name, "{d}, {s}", "7dss", KindRegister, KindImmediate8, KindUnused),
	newDefinition(OpLoad, chip8cpu.LdInst.Name, "{d}, {s}", "8ds0", KindRegister, KindRegister, KindUnused),
	newDefinition(OpOr, chip8cpu.OrInst.Name, "{d}, {s}", "8ds1", KindRegister, KindRegister, KindUnused),
	newDefinition(OpAnd, chip8cpu.AndInst.Name, "{d}, {s}", "8ds2", KindRegister, KindRegister, KindUnused),
	newDefinition(OpXor, chip8cpu.XorInst.Name, "{d}, {s}", "8ds3", KindRegister, KindRegister, KindUnused),
	newDefinition(OpAdd, chip8cpu.AddInst.Name, "{d}, {s}", "8ds4", KindRegister, KindRegister, KindUnused),
	newDefinition(OpSub, chip8cpu.SubInst.Name, "{d}, {s}", "8ds5", KindRegister, KindRegister, KindUnused),
	newDefinition(OpShiftRight, chip8cpu.ShrInst.Name, "{d}, {s}", "8ds6", KindRegister, KindRegister, KindUnused),
	newDefinition(OpSubN, chip8cpu.SubnInst.Name, "{d}, {s}", "8ds7", KindRegister, KindRegister, KindUnused),
	newDefinition(OpShiftLeft, chip8cpu.ShlInst.Name, "{d}, {s}", "8dsE", KindRegister, KindRegister, KindUnused),
	newDefinition(OpSkipNeq, chip8cpu.SneInst.Name, "{d}, {s}", "9ds0", KindRegister, KindRegister, KindUnused),
	newDefinition(OpLoad, chip8cpu.LdInst.Name, "{d}, {s}", "Asss", KindIndex, KindImmediate12, KindUnused),
	newDefinition(OpJumpV0, chip8cpu.JpInst.Name, "V0, {d}", "Bddd", KindImmediate12, KindUnused, KindUnused),
	newDefinition(OpRand, chip8cpu.RndInst.Name, "{d}, {s}", "Cdss", KindRegister, KindImmediate8, KindUnused),
	newDefinition(OpSprite, chip8cpu.DrwInst.Name, "{d}, {s}, {a}", "Ddsa", KindRegister, KindRegister, KindImmediate4),
	newDefinition(OpSkipKey, chip8cpu.SkpInst.Name, "{d}", "Ed9E", KindRegister, KindUnused, KindUnused),
	newDefinition(OpSkipNKey, chip8cpu.SknpInst.Name, "{d}", "EdA1", KindRegister, KindUnused, KindUnused),
	newDefinition(OpLoad, chip8cpu.LdInst.Name, "{d}, {s}", "Fd07", KindRegister, KindDelayTimer, KindUnused),
	newDefinition(OpWaitKey, chip8cpu.LdInst.Name, "{d}, K", "Fd0A", KindRegister, KindUnused, KindUnused),
	newDefinition(OpLoad, chip8cpu.LdInst.Name, "{d}, {s}", "Fs15", KindDelayTimer, KindRegister, KindUnused),
	newDefinition(OpLoad, chip8cpu.LdInst.Name, "{d}, {s}", "Fs18", KindSoundTimer, KindRegister, KindUnused),
	newDefinition(OpAdd, chip8cpu.AddInst.Name, "{d}, {s}", "Fs1E", KindIndex, KindRegister, KindUnused),
	newDefinition(OpFont, chip8cpu.LdInst.Name, "F, {s}", "Fs29", KindIndex, KindRegister, KindUnused),
	newDefinition(OpBCD, chip8cpu.LdInst.Name, "B, {s}", "Fs33", KindIndirect, KindRegister, KindUnused),
	newDefinition(OpStash, chip8cpu.LdInst.Name, "{d}, V{s:x}", "Fs55", KindIndirect, KindImmediate4, KindUnused),
	newDefinition(OpFetch, chip8cpu.LdInst.Name, "V{s:x}, [I]", "Fs65", KindUnused, KindImmediate4, KindUnused),
}
