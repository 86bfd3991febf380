// Package corpustest provides a small fixture corpus for tests.
//
// The fixture carries Al-Fatiha (1:1-7), Al-Ikhlas (112:1-4), and the
// repeated refrain at 55:13 and 55:16, which is enough to exercise exact,
// normalized (including collisions), partial, fuzzy, and range behavior
// without shipping the full corpus into every package's testdata.
package corpustest

import (
	"github.com/hifzlab/isnad/core/quran"
)

// Verse texts in Uthmani script with full diacritics.
const (
	Fatiha1 = "بِسْمِ ٱللَّهِ ٱلرَّحْمَٰنِ ٱلرَّحِيمِ"
	Fatiha2 = "ٱلْحَمْدُ لِلَّهِ رَبِّ ٱلْعَٰلَمِينَ"
	Fatiha3 = "ٱلرَّحْمَٰنِ ٱلرَّحِيمِ"
	Fatiha4 = "مَٰلِكِ يَوْمِ ٱلدِّينِ"
	Fatiha5 = "إِيَّاكَ نَعْبُدُ وَإِيَّاكَ نَسْتَعِينُ"
	Fatiha6 = "ٱهْدِنَا ٱلصِّرَٰطَ ٱلْمُسْتَقِيمَ"
	Fatiha7 = "صِرَٰطَ ٱلَّذِينَ أَنْعَمْتَ عَلَيْهِمْ غَيْرِ ٱلْمَغْضُوبِ عَلَيْهِمْ وَلَا ٱلضَّآلِّينَ"

	Ikhlas1 = "قُلْ هُوَ ٱللَّهُ أَحَدٌ"
	Ikhlas2 = "ٱللَّهُ ٱلصَّمَدُ"
	Ikhlas3 = "لَمْ يَلِدْ وَلَمْ يُولَدْ"
	Ikhlas4 = "وَلَمْ يَكُن لَّهُۥ كُفُوًا أَحَدٌ"

	// Rahman refrain, identical wording at two ayahs.
	RahmanRefrain = "فَبِأَيِّ آلَآءِ رَبِّكُمَا تُكَذِّبَانِ"
)

// Corpus builds the fixture corpus.
func Corpus() *quran.Corpus {
	verses := []quran.Verse{
		{ID: 1, Surah: 1, Ayah: 1, Text: Fatiha1, TextSimple: "بسم الله الرحمن الرحيم", Page: 1, Juz: 1},
		{ID: 2, Surah: 1, Ayah: 2, Text: Fatiha2, TextSimple: "الحمد لله رب العالمين", Page: 1, Juz: 1},
		{ID: 3, Surah: 1, Ayah: 3, Text: Fatiha3, TextSimple: "الرحمن الرحيم", Page: 1, Juz: 1},
		{ID: 4, Surah: 1, Ayah: 4, Text: Fatiha4, TextSimple: "مالك يوم الدين", Page: 1, Juz: 1},
		{ID: 5, Surah: 1, Ayah: 5, Text: Fatiha5, TextSimple: "اياك نعبد واياك نستعين", Page: 1, Juz: 1},
		{ID: 6, Surah: 1, Ayah: 6, Text: Fatiha6, TextSimple: "اهدنا الصراط المستقيم", Page: 1, Juz: 1},
		{ID: 7, Surah: 1, Ayah: 7, Text: Fatiha7, TextSimple: "صراط الذين انعمت عليهم غير المغضوب عليهم ولا الضالين", Page: 1, Juz: 1},

		{ID: 4913, Surah: 55, Ayah: 13, Text: RahmanRefrain, TextSimple: "فباي الاء ربكما تكذبان", Page: 531, Juz: 27},
		{ID: 4916, Surah: 55, Ayah: 16, Text: RahmanRefrain, TextSimple: "فباي الاء ربكما تكذبان", Page: 531, Juz: 27},

		{ID: 6222, Surah: 112, Ayah: 1, Text: Ikhlas1, TextSimple: "قل هو الله احد", Page: 604, Juz: 30},
		{ID: 6223, Surah: 112, Ayah: 2, Text: Ikhlas2, TextSimple: "الله الصمد", Page: 604, Juz: 30},
		{ID: 6224, Surah: 112, Ayah: 3, Text: Ikhlas3, TextSimple: "لم يلد ولم يولد", Page: 604, Juz: 30},
		{ID: 6225, Surah: 112, Ayah: 4, Text: Ikhlas4, TextSimple: "ولم يكن له كفوا احد", Page: 604, Juz: 30},
	}

	surahs := []quran.Surah{
		{Number: 1, Name: "الفاتحة", EnglishName: "Al-Fatiha", VerseCount: 7, Revelation: quran.Meccan},
		{Number: 55, Name: "الرحمن", EnglishName: "Ar-Rahman", VerseCount: 2, Revelation: quran.Medinan},
		{Number: 112, Name: "الإخلاص", EnglishName: "Al-Ikhlas", VerseCount: 4, Revelation: quran.Meccan},
	}

	return quran.New(verses, surahs)
}
