package geo

// divisions is the reference tree in display order. It is never mutated;
// accessors hand out copies.
var divisions = []Division{
	{
		Name: "Dhaka Division",
		Districts: []District{
			{Name: "Dhaka", SubDistricts: []string{"Dhamrai", "Dohar", "Keraniganj", "Nawabganj", "Savar"}},
			{Name: "Faridpur", SubDistricts: []string{"Alfadanga", "Bhanga", "Boalmari", "Charbhadrasan", "Madhukhali", "Nagarkanda", "Sadarpur", "Saltha"}},
			{Name: "Gazipur", SubDistricts: []string{"Gazipur Sadar", "Kaliakair", "Kaliganj", "Kapasia", "Sreepur"}},
			{Name: "Gopalganj", SubDistricts: []string{"Gopalganj Sadar", "Kashiani", "Kotalipara", "Muksudpur", "Tungipara"}},
			{Name: "Kishoreganj", SubDistricts: []string{"Austagram", "Bajitpur", "Bhairab", "Hossainpur", "Itna", "Karimganj", "Katiadi", "Kishoreganj Sadar", "Kuliarchar", "Mithamain", "Nikli", "Pakundia", "Tarail"}},
			{Name: "Madaripur", SubDistricts: []string{"Kalkini", "Madaripur Sadar", "Rajoir", "Shibchar"}},
			{Name: "Manikganj", SubDistricts: []string{"Daulatpur", "Ghior", "Harirampur", "Manikganj Sadar", "Saturia", "Shivalaya", "Singair"}},
			{Name: "Munshiganj", SubDistricts: []string{"Gazaria", "Lohajang", "Munshiganj Sadar", "Sirajdikhan", "Tongibari", "Sreenagar"}},
			{Name: "Narayanganj", SubDistricts: []string{"Araihazar", "Bandar", "Narayanganj Sadar", "Rupganj", "Sonargaon"}},
			{Name: "Narsingdi", SubDistricts: []string{"Belabo", "Monohardi", "Narsingdi Sadar", "Palash", "Raipura", "Shibpur"}},
			{Name: "Rajbari", SubDistricts: []string{"Baliakandi", "Goalanda", "Kalukhali", "Pangsha", "Rajbari Sadar"}},
			{Name: "Shariatpur", SubDistricts: []string{"Bhedarganj", "Damudya", "Gosairhat", "Naria", "Shariatpur Sadar", "Zanjira"}},
			{Name: "Tangail", SubDistricts: []string{"Basail", "Bhuapur", "Delduar", "Dhanbari", "Ghatail", "Gopalpur", "Kalihati", "Madhupur", "Mirzapur", "Nagarpur", "Sakhipur", "Tangail Sadar"}},
		},
	},
	{
		Name: "Chattogram Division",
		Districts: []District{
			{Name: "Bandarban", SubDistricts: []string{"Alikadam", "Bandarban Sadar", "Lama", "Naikhongchhari", "Rowangchhari", "Ruma", "Thanchi"}},
			{Name: "Brahmanbaria", SubDistricts: []string{"Ashuganj", "Bancharampur", "Bijoynagar", "Brahmanbaria Sadar", "Kasba", "Nabinagar", "Nasirnagar", "Sarail"}},
			{Name: "Chandpur", SubDistricts: []string{"Chandpur Sadar", "Faridganj", "Haimchar", "Hajiganj", "Kachua", "Matlab Dakshin", "Matlab Uttar", "Shahrasti"}},
			{Name: "Chattogram", SubDistricts: []string{"Anwara", "Banshkhali", "Boalkhali", "Chandanaish", "Fatikchhari", "Hathazari", "Lohagara", "Mirsharai", "Patiya", "Rangunia", "Raozan", "Sandwip", "Satkania", "Sitakunda"}},
			{Name: "Cox's Bazar", SubDistricts: []string{"Chakaria", "Cox's Bazar Sadar", "Kutubdia", "Maheshkhali", "Pekua", "Ramu", "Teknaf", "Ukhiya"}},
			{Name: "Cumilla", SubDistricts: []string{"Barura", "Brahmanpara", "Burichang", "Chandina", "Cumilla Adarsha Sadar", "Cumilla Sadar Dakshin", "Daudkandi", "Debidwar", "Homna", "Laksham", "Manoharganj", "Meghna", "Monohorgonj", "Muradnagar", "Nangalkot", "Titas"}},
			{Name: "Feni", SubDistricts: []string{"Chhagalnaiya", "Daganbhuiyan", "Feni Sadar", "Fulgazi", "Parshuram", "Sonagazi"}},
			{Name: "Khagrachhari", SubDistricts: []string{"Dighinala", "Khagrachhari Sadar", "Lakshmichhari", "Mahalchhari", "Manikchhari", "Matiranga", "Panchhari", "Ramgarh"}},
			{Name: "Lakshmipur", SubDistricts: []string{"Kamalnagar", "Lakshmipur Sadar", "Raipur", "Ramganj", "Ramgati"}},
			{Name: "Noakhali", SubDistricts: []string{"Begumganj", "Chatkhil", "Companiganj", "Hatiya", "Noakhali Sadar", "Senbagh", "Subarnachar"}},
			{Name: "Rangamati", SubDistricts: []string{"Baghaichhari", "Barkal", "Belaichhari", "Juraichhari", "Kaptai", "Langadu", "Naniarchar", "Rajasthali", "Rangamati Sadar"}},
		},
	},
	{
		Name: "Khulna Division",
		Districts: []District{
			{Name: "Bagerhat", SubDistricts: []string{"Chitalmari", "Fakirhat", "Kachua", "Mollahat", "Mongla", "Morrelganj", "Rampal", "Sarankhola", "Bagerhat Sadar"}},
			{Name: "Chuadanga", SubDistricts: []string{"Alamdanga", "Chuadanga Sadar", "Damurhuda", "Jibannagar"}},
			{Name: "Jashore", SubDistricts: []string{"Abhaynagar", "Bagherpara", "Chaugachha", "Jhikargachha", "Jashore Sadar", "Keshabpur", "Manirampur", "Sharsha"}},
			{Name: "Jhenaidah", SubDistricts: []string{"Harinakunda", "Jhenaidah Sadar", "Kaliganj", "Kotchandpur", "Maheshpur", "Shailkupa"}},
			{Name: "Khulna", SubDistricts: []string{"Batiaghata", "Dacope", "Dighalia", "Dumuria", "Koyra", "Paikgachha", "Phultala", "Rupsha", "Terokhada", "Khulna Sadar"}},
			{Name: "Kushtia", SubDistricts: []string{"Bheramara", "Daulatpur", "Khoksa", "Kumarkhali", "Kushtia Sadar", "Mirpur"}},
			{Name: "Magura", SubDistricts: []string{"Magura Sadar", "Mohammadpur", "Shalikha", "Sreepur"}},
			{Name: "Meherpur", SubDistricts: []string{"Gangni", "Meherpur Sadar", "Mujibnagar"}},
			{Name: "Narail", SubDistricts: []string{"Kalia", "Lohagara", "Narail Sadar"}},
			{Name: "Satkhira", SubDistricts: []string{"Assasuni", "Debhata", "Kalaroa", "Kaliganj", "Satkhira Sadar", "Shaymnagar", "Tala"}},
		},
	},
	{
		Name: "Rajshahi Division",
		Districts: []District{
			{Name: "Bogura", SubDistricts: []string{"Adamdighi", "Bogura Sadar", "Dhunat", "Dhupchanchia", "Gabtali", "Kahalu", "Nandigram", "Sariakandi", "Shahjahanpur", "Sherpur", "Shibganj", "Sonatola"}},
			{Name: "Joypurhat", SubDistricts: []string{"Akkelpur", "Joypurhat Sadar", "Kalai", "Khetlal", "Panchbibi"}},
			{Name: "Naogaon", SubDistricts: []string{"Atrai", "Badalgachhi", "Dhamoirhat", "Manda", "Mohadevpur", "Naogaon Sadar", "Niamatpur", "Patnitala", "Porsha", "Raninagar", "Sapahar"}},
			{Name: "Natore", SubDistricts: []string{"Bagatipara", "Baraigram", "Gurudaspur", "Lalpur", "Naldanga", "Natore Sadar", "Singra"}},
			{Name: "Chapai Nawabganj", SubDistricts: []string{"Bholahat", "Gomastapur", "Nachole", "Chapai Nawabganj Sadar", "Shibganj"}},
			{Name: "Pabna", SubDistricts: []string{"Atgharia", "Bera", "Bhangura", "Chatmohar", "Faridpur", "Ishwardi", "Pabna Sadar", "Santhia", "Sujanagar"}},
			{Name: "Rajshahi", SubDistricts: []string{"Bagha", "Bagmara", "Charghat", "Durgapur", "Godagari", "Mohanpur", "Paba", "Puthia", "Rajshahi Sadar", "Tanore"}},
			{Name: "Sirajganj", SubDistricts: []string{"Belkuchi", "Chauhali", "Kamarkhanda", "Kazipur", "Raiganj", "Shahjadpur", "Sirajganj Sadar", "Tarash", "Ullahpara"}},
		},
	},
	{
		Name: "Rangpur Division",
		Districts: []District{
			{Name: "Dinajpur", SubDistricts: []string{"Birampur", "Birganj", "Birol", "Bochaganj", "Chirirbandar", "Dinajpur Sadar", "Ghoraghat", "Hakimpur", "Kaharole", "Khansama", "Nawabganj", "Parbatipur"}},
			{Name: "Gaibandha", SubDistricts: []string{"Fulchhari", "Gaibandha Sadar", "Gobindaganj", "Palashbari", "Sadullapur", "Sughatta", "Sundarganj"}},
			{Name: "Kurigram", SubDistricts: []string{"Bhurungamari", "Chilmari", "Kurigram Sadar", "Nageshwari", "Phulbari", "Rajarhat", "Raomari", "Ulipur"}},
			{Name: "Lalmonirhat", SubDistricts: []string{"Aditmari", "Hatibandha", "Kaliganj", "Lalmonirhat Sadar", "Patgram"}},
			{Name: "Nilphamari", SubDistricts: []string{"Dimla", "Domar", "Jaldhaka", "Kishoreganj (Nilphamari)", "Nilphamari Sadar", "Saidpur"}},
			{Name: "Panchagarh", SubDistricts: []string{"Atwari", "Boda", "Debiganj", "Panchagarh Sadar", "Tetulia"}},
			{Name: "Rangpur", SubDistricts: []string{"Badarganj", "Gangachhara", "Kaunia", "Mithapukur", "Pirgachha", "Pirganj", "Rangpur Sadar", "Taraganj"}},
			{Name: "Thakurgaon", SubDistricts: []string{"Baliadangi", "Haripur", "Pirganj", "Ranisankail", "Thakurgaon Sadar"}},
		},
	},
	{
		Name: "Sylhet Division",
		Districts: []District{
			{Name: "Habiganj", SubDistricts: []string{"Ajmiriganj", "Bahubal", "Baniachong", "Chunarughat", "Habiganj Sadar", "Lakhai", "Madhabpur", "Nabiganj", "Shayestaganj"}},
			{Name: "Moulvibazar", SubDistricts: []string{"Barlekha", "Juri", "Kamalganj", "Kulaura", "Moulvibazar Sadar", "Rajnagar", "Sreemangal"}},
			{Name: "Sunamganj", SubDistricts: []string{"Bishwamvarpur", "Chhatak", "Derai", "Dharmapasha", "Dowarabazar", "Jagannathpur", "Jamalganj", "Sullah", "Sunamganj Sadar", "Shanthiganj", "Tahirpur"}},
			{Name: "Sylhet", SubDistricts: []string{"Balaganj", "Beanibazar", "Bishwanath", "Companiganj", "Fenchuganj", "Golapganj", "Gowainghat", "Jaintiapur", "Kanaighat", "Osmaninagar", "Sylhet Sadar", "Zakiganj"}},
		},
	},
}
